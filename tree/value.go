package tree

import "strconv"

// Value is a single textual value with conversions to common types.
type Value string

func (v Value) String() string { return string(v) }

func (v Value) Int() (int, error) { return strconv.Atoi(string(v)) }

func (v Value) Int64() (int64, error) { return strconv.ParseInt(string(v), 10, 64) }

func (v Value) Uint64() (uint64, error) { return strconv.ParseUint(string(v), 10, 64) }

func (v Value) Float64() (float64, error) { return strconv.ParseFloat(string(v), 64) }

func (v Value) Bool() (bool, error) { return strconv.ParseBool(string(v)) }
