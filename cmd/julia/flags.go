package main

import (
	"fmt"
	"github.com/spf13/pflag"
	"github.com/willbeason/julia-escape/pkg/escape"
	"strconv"
)

// complexValue is a pflag.Value holding a Go complex literal such as
// "-0.123+0.745i".
type complexValue complex128

func (c *complexValue) String() string {
	return strconv.FormatComplex(complex128(*c), 'g', -1, 128)
}

func (c *complexValue) Set(s string) error {
	v, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return fmt.Errorf("parsing complex %q: %w", s, err)
	}
	*c = complexValue(v)
	return nil
}

func (c *complexValue) Type() string {
	return "complex"
}

type sentinelValue escape.Sentinel

func (s *sentinelValue) String() string {
	return escape.Sentinel(*s).String()
}

func (s *sentinelValue) Set(name string) error {
	v, err := escape.ParseSentinel(name)
	if err != nil {
		return err
	}
	*s = sentinelValue(v)
	return nil
}

func (s *sentinelValue) Type() string {
	return "sentinel"
}

var (
	_ pflag.Value = (*complexValue)(nil)
	_ pflag.Value = (*sentinelValue)(nil)
)
