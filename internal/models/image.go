package models

// ImageRole tags which physique a submitted photo shows.
type ImageRole string

const (
	RoleCurrentPhysique ImageRole = "current-physique"
	RoleGoalPhysique    ImageRole = "goal-physique"
)

// ImageAsset is a submitted photo. It lives only for the duration of the
// visual-assessment call and is never written to disk or any store.
type ImageAsset struct {
	Data []byte
	MIME string
	Role ImageRole
}

// ContentType returns the declared MIME type, defaulting to JPEG when the
// upload did not declare one.
func (a ImageAsset) ContentType() string {
	if a.MIME == "" {
		return "image/jpeg"
	}
	return a.MIME
}
