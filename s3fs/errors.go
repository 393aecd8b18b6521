package s3fs

import "errors"

var errDirNotEmpty = errors.New("directory not empty")
