package i18n

import "golang.org/x/text/language"

const (
	KeyWelcome          = "welcome"
	KeyLogin            = "login"
	KeyCreateAccount    = "createAccount"
	KeyJoinUs           = "joinUs"
	KeyError            = "error"
	KeySuccess          = "success"
	KeyInvalidEmail     = "invalidEmail"
	KeyInvalidPassword  = "invalidPassword"
	KeyPasswordMismatch = "passwordMismatch"
	KeyAccountCreated   = "accountCreated"
	KeyEmailInUse       = "emailInUse"
	KeyInvalidEmailForm = "invalidEmailFormat"
	KeyWrongPassword    = "wrongPassword"
	KeyUserNotFound     = "userNotFound"
	KeyLoadFeedFailed   = "loadFeedFailed"
	KeyFetchDetails     = "fetchDetailsFailed"
	KeyErrorDetails     = "errorFetchingDetails"
	KeyRetry            = "retry"
	KeyGoBack           = "goBack"
	KeyNoTitle          = "noTitle"
	KeyNoDescription    = "noDescription"
	KeyFeed             = "feed"
	KeyLoadMore         = "loadMore"
	KeyRefresh          = "refresh"
	KeyLoading          = "loading"
	KeySettings         = "Settings"
	KeyLanguage         = "Language"
	KeyLanguageName     = "languageName"
	KeyBack             = "Back"
	KeyLogout           = "Logout"
	KeyLoginUsage       = "loginUsage"
	KeyRegisterUsage    = "registerUsage"
	KeyEmptyFeed        = "emptyFeed"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		KeyWelcome:          "Welcome",
		KeyLogin:            "Login",
		KeyCreateAccount:    "Create account",
		KeyJoinUs:           "Join us today",
		KeyError:            "Error",
		KeySuccess:          "Success",
		KeyInvalidEmail:     "Please enter a valid email.",
		KeyInvalidPassword:  "Password must be at least 6 characters and contain an uppercase letter and a number.",
		KeyPasswordMismatch: "Passwords do not match.",
		KeyAccountCreated:   "Account created. You can log in now.",
		KeyEmailInUse:       "This email is already in use.",
		KeyInvalidEmailForm: "Invalid email address.",
		KeyWrongPassword:    "Incorrect password.",
		KeyUserNotFound:     "No account found with this email.",
		KeyLoadFeedFailed:   "There was an issue loading the data.",
		KeyFetchDetails:     "Could not load the post.",
		KeyErrorDetails:     "Error fetching details",
		KeyRetry:            "Retry",
		KeyGoBack:           "Go back",
		KeyNoTitle:          "No title",
		KeyNoDescription:    "No description",
		KeyFeed:             "Listing",
		KeyLoadMore:         "Load more",
		KeyRefresh:          "Refresh",
		KeyLoading:          "Loading…",
		KeySettings:         "Settings",
		KeyLanguage:         "Language",
		KeyLanguageName:     "English",
		KeyBack:             "Back",
		KeyLogout:           "Logout",
		KeyLoginUsage:       "Send: /login <email> <password>",
		KeyRegisterUsage:    "Send: /register <email> <password> <confirm password>",
		KeyEmptyFeed:        "Nothing here yet.",
	},
	language.Spanish: {
		KeyWelcome:          "Bienvenido",
		KeyLogin:            "Iniciar sesión",
		KeyCreateAccount:    "Crear cuenta",
		KeyJoinUs:           "Únete hoy",
		KeyError:            "Error",
		KeySuccess:          "Éxito",
		KeyInvalidEmail:     "Introduce un correo electrónico válido.",
		KeyInvalidPassword:  "La contraseña debe tener al menos 6 caracteres, una mayúscula y un número.",
		KeyPasswordMismatch: "Las contraseñas no coinciden.",
		KeyAccountCreated:   "Cuenta creada. Ya puedes iniciar sesión.",
		KeyEmailInUse:       "Este correo electrónico ya está en uso.",
		KeyInvalidEmailForm: "Dirección de correo no válida.",
		KeyWrongPassword:    "Contraseña incorrecta.",
		KeyUserNotFound:     "No existe una cuenta con este correo.",
		KeyLoadFeedFailed:   "Hubo un problema al cargar los datos.",
		KeyFetchDetails:     "No se pudo cargar la publicación.",
		KeyErrorDetails:     "Error al obtener los detalles",
		KeyRetry:            "Reintentar",
		KeyGoBack:           "Volver",
		KeyNoTitle:          "Sin título",
		KeyNoDescription:    "Sin descripción",
		KeyFeed:             "Listado",
		KeyLoadMore:         "Cargar más",
		KeyRefresh:          "Actualizar",
		KeyLoading:          "Cargando…",
		KeySettings:         "Ajustes",
		KeyLanguage:         "Idioma",
		KeyLanguageName:     "Español",
		KeyBack:             "Atrás",
		KeyLogout:           "Cerrar sesión",
		KeyLoginUsage:       "Envía: /login <correo> <contraseña>",
		KeyRegisterUsage:    "Envía: /register <correo> <contraseña> <confirmar contraseña>",
		KeyEmptyFeed:        "Todavía no hay nada.",
	},
}
