package fetcher

import "errors"

// ErrStatusNotOK is returned when http response had a non-2xx status.
var ErrStatusNotOK = errors.New("response status is not OK")
