package main

import (
	"fmt"

	plogger "github.com/heytribe/go-plogger"
)

func logOnError(err error, format string, args ...interface{}) bool {
	return plogger.New().OnError(err, format, args...)
}

func panicOnError(err error, msg string) {
	if err != nil {
		s := fmt.Sprintf("%s: %s", msg, err)
		plogger.New().Fatalf(s) // FIXME
		panic(s)
	}
}
