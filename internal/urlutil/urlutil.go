// Package urlutil opens config files given as local paths or http(s) urls.
package urlutil

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gdey/errors"
)

// ErrNilURL is returned when no location is given
const ErrNilURL = errors.String("nil url provided")

// Timeout bounds fetching a remote file.
var Timeout = 10 * time.Second

// ErrRemoteFile is returned when a remote file can not be fetched.
type ErrRemoteFile struct {
	Location *url.URL
	Err      error
}

func (e ErrRemoteFile) Error() string {
	return fmt.Sprintf("error obtaining remote file (%v): %v", e.Location, e.Err)
}

func (e ErrRemoteFile) Unwrap() error { return e.Err }

// ErrUnsupportedScheme is returned for urls that are neither files nor http(s).
type ErrUnsupportedScheme ErrRemoteFile

func (e ErrUnsupportedScheme) Error() string {
	return fmt.Sprintf("unsupported scheme (%v), for location %v", strings.ToLower(e.Location.Scheme), e.Location)
}

// ErrFileNotExists is returned when a local file is missing.
type ErrFileNotExists struct {
	Filename string
	Err      error
}

func (e ErrFileNotExists) Error() string {
	return fmt.Sprintf("file at location (%v) not found", e.Filename)
}

func (e ErrFileNotExists) Unwrap() error { return e.Err }

// NewReader opens the file at location; a url without a scheme is a local
// path. The caller closes it.
func NewReader(location *url.URL) (io.ReadCloser, error) {
	if location == nil {
		return nil, ErrNilURL
	}
	switch strings.ToLower(location.Scheme) {
	case "", "file":
		filename := location.Path
		file, err := os.Open(filename)
		if os.IsNotExist(err) {
			return nil, ErrFileNotExists{Filename: filename, Err: err}
		}
		return file, err

	case "http", "https":
		client := &http.Client{Timeout: Timeout}
		res, err := client.Get(location.String())
		if err != nil {
			return nil, ErrRemoteFile{Location: location, Err: err}
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, ErrRemoteFile{Location: location, Err: fmt.Errorf("status %v", res.Status)}
		}
		return res.Body, nil

	default:
		return nil, ErrUnsupportedScheme{Location: location}
	}
}

// VisitReader calls fn with the opened location, closing it afterwards.
func VisitReader(location *url.URL, fn func(io.Reader) error) error {
	r, err := NewReader(location)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}
