package binser

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// component tags every log entry from one part of the package.
func component(l Logger, name string) Logger {
	return coalesce[Logger](l, NopLogger{}).With(Fields{"component": name})
}
