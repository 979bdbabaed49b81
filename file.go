// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"io"
	"os"
	"sync"
)

// fileReader is an io.Reader that handles opening a file for reading
// automatically. Opening is deferred to the first Read so constructing
// a reader for a file that may not exist is free.
type fileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	file     io.ReadCloser
}

func newFileReader(path string) *fileReader {
	return &fileReader{
		path: path,
	}
}

// Read implements the io.Reader interface.
func (r *fileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = os.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *fileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
