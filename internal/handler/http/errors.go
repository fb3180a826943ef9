package http

import "errors"

// errBodyIsNotObject is reported for a POST body that decodes to JSON null.
var errBodyIsNotObject = errors.New("request body must be a JSON object")
