package configs

import (
	"errors"
)

func First[T any](loader Loader, path string) T {
	value, _ := Lookup[T](loader, path)
	return value
}

// Lookup is First that also reports whether any file sets path.
func Lookup[T any](loader Loader, path string) (value T, ok bool) {
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, false
		}
		panic(err)
	}
	return value, true
}
