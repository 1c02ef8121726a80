package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// usageError reports a bad argument together with the command that lists the
// accepted values.
type usageError struct {
	what string
	got  string
	see  string
}

func (e usageError) Error() string {
	return fmt.Sprintf("unknown %s: %q (run `%s` to list them)", e.what, e.got, e.see)
}

func errUsage(what, got, see string) error {
	return usageError{what: what, got: got, see: see}
}
