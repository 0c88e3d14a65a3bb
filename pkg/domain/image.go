package domain

// UploadedImage describes an image committed to the image hosting repository.
type UploadedImage struct {
	// Path is the repository-relative path of the uploaded file.
	Path string `json:"path"`
	// URL is the public CDN URL under which the image is reachable.
	URL string `json:"url"`
}
