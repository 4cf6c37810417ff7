package query

import (
	"strconv"
	"time"
)

const (
	timeout = time.Second
	tick    = time.Millisecond
)

func itoa(i int) string { return strconv.Itoa(i) }
