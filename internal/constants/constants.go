package constants

// ContextKeyUserID is the key under which the authenticated user ID is
// stored in both the session and the gin context.
const ContextKeyUserID = "user_id"

const (
	MinPasswordLength = 8

	// MaxTaskImages caps the number of images attached to a task. A batch
	// that would exceed the cap is rejected whole.
	MaxTaskImages = 5
)

const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Categories is the fixed set of task categories offered by the platform.
var Categories = []string{
	"Webentwicklung",
	"Grafikdesign",
	"Digital Marketing",
	"Content Writing",
	"Video Editing",
	"Beratung",
	"Übersetzung",
	"Fotografie",
}

// IsValidCategory reports whether category is one of the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
