package walker

// Failure records an input that was found but could not be used.
type Failure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// NewFailure builds a Failure from a path and its error.
func NewFailure(path string, err error) Failure {
	f := Failure{Path: path}
	if err != nil {
		f.Error = err.Error()
	}

	return f
}
