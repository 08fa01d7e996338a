package ports

// BackendSelector picks the Backend implementation for a kind and binds it to a resolved file.
type BackendSelector interface {
	// Select returns the backend for kind. Empty file or path fall back to the kind's
	// default file name and the current working directory.
	Select(kind, file, path string) (Backend, error)
}
