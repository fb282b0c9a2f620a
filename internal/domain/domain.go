package domain

type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ThumbnailMap maps a post ID to the thumbnail URL of the photo sharing it.
type ThumbnailMap map[int64]string

type FeedEntry struct {
	Post
	Thumbnail string
}

// Session is the email of the logged in user.
type Session string

type Destination string

const (
	DestinationLogin    Destination = "Login"
	DestinationRegister Destination = "Register"
	DestinationFeed     Destination = "Feed"
	DestinationDetails  Destination = "Details"
	DestinationSettings Destination = "Settings"
)

type Params struct {
	PostID int64
}
