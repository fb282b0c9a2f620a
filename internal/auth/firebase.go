package auth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	firebaseClientTimeout = 15 * time.Second
	firebaseMaxErrorBody  = 64 << 10

	signInPath = "/v1/accounts:signInWithPassword"
	signUpPath = "/v1/accounts:signUp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Identity Toolkit error messages and the provider codes they stand for.
var firebaseCodes = map[string]string{
	"INVALID_PASSWORD": CodeWrongPassword,
	"EMAIL_NOT_FOUND":  CodeUserNotFound,
	"INVALID_EMAIL":    CodeInvalidEmail,
	"EMAIL_EXISTS":     CodeEmailInUse,
}

// FirebaseProvider talks to the Identity Toolkit REST API.
type FirebaseProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewFirebaseProvider(baseURL, apiKey string) *FirebaseProvider {
	return &FirebaseProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: firebaseClientTimeout},
	}
}

type firebaseRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type firebaseErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) error {
	return p.call(ctx, signInPath, email, password)
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password string) error {
	return p.call(ctx, signUpPath, email, password)
}

func (p *FirebaseProvider) call(ctx context.Context, path, email, password string) error {
	body, err := json.Marshal(firebaseRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.baseURL + path + "?key=" + url.QueryEscape(p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, firebaseMaxErrorBody))
	if err != nil {
		return fmt.Errorf("read error response (status = %d): %w", resp.StatusCode, err)
	}

	var errResp firebaseErrorResponse
	if err = json.Unmarshal(raw, &errResp); err != nil || errResp.Error.Message == "" {
		return &ProviderError{
			Code:    CodeOther,
			Message: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
		}
	}

	return firebaseError(errResp.Error.Message)
}

// firebaseError converts messages like "WEAK_PASSWORD : Password should be at
// least 6 characters" into a ProviderError.
func firebaseError(message string) *ProviderError {
	name, detail, _ := strings.Cut(message, ":")
	name = strings.TrimSpace(name)
	detail = strings.TrimSpace(detail)

	if code, ok := firebaseCodes[name]; ok {
		return &ProviderError{Code: codePrefix + code, Message: detail}
	}

	if detail == "" {
		detail = name
	}

	return &ProviderError{Code: codePrefix + CodeOther, Message: detail}
}
