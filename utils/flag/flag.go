/*
flag package sets up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/
package flag

import (
	"flag"
)

const (
	APIServer = "eleanor_api"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name reported in log fields")
}

func ParseFlags() {
	flag.Parse()
}
