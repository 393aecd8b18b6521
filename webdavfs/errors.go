package webdavfs

import "errors"

var errDirNotEmpty = errors.New("directory not empty")
