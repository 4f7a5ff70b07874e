package entity

// Image is a stored file reference as returned by the image store.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
