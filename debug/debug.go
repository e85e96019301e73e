package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Features  bool
	Logic     bool
	Partition bool
	Incr      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Features = boolEnv("SMTGEN_DEBUG_FEATURES")
	d.Logic = boolEnv("SMTGEN_DEBUG_LOGIC")
	d.Partition = boolEnv("SMTGEN_DEBUG_PARTITION")
	d.Incr = boolEnv("SMTGEN_DEBUG_INCR")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Features() bool {
	return d.Features
}
func Logic() bool {
	return d.Logic
}
func Partition() bool {
	return d.Partition
}
func Incr() bool {
	return d.Incr
}
