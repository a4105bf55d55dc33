package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange converts a range phrase into loop bounds [i1, i2) within
// [0, max):
//
//	":"   = full range, from 0 to max
//	"end" = last index, from max-1 to max
//	"N"   = single index, from N to N+1
//	"2:N" = range, from 2 to N
//	":N"  = range, from 0 to N
//	"N:"  = range, from N to max
func ParseRange(dim string, max int) (i1, i2 int, err error) {
	switch strings.TrimSpace(dim) {
	case "end":
		i1, i2 = max-1, max
	case ":", "":
		i1, i2 = 0, max
	default:
		if i1, i2, err = parseRange(strings.TrimSpace(dim), max); err != nil {
			return
		}
	}
	if i1 < 0 || i2 > max || i1 >= i2 {
		err = fmt.Errorf("range \"%s\" is outside [0,%d)", dim, max)
	}
	return
}

func parseRange(dim string, max int) (i1, i2 int, err error) {
	var (
		splits = strings.Split(dim, ":")
	)
	if len(splits) > 2 {
		err = fmt.Errorf("invalid range \"%s\"", dim)
		return
	}
	if splits[0] != "" {
		if i1, err = strconv.Atoi(splits[0]); err != nil {
			return
		}
	}
	if len(splits) == 1 {
		i2 = i1 + 1
		return
	}
	if splits[1] == "" {
		i2 = max
		return
	}
	if i2, err = strconv.Atoi(splits[1]); err != nil {
		return
	}
	if i2 == i1 {
		i2 = i1 + 1
	}
	return
}
