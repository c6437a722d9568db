package pprof

import (
	"net/http"
	_ "net/http/pprof"
)

func StartPprofServer(addr string) error {
	return http.ListenAndServe(addr, nil)
}
