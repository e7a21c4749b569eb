package shell

import shellquote "github.com/kballard/go-shellquote"

// Quote returns s as a single POSIX shell word.
func Quote(s string) string {
	return shellquote.Join(s)
}

// Join quotes each word and joins them with spaces, yielding a command line
// a shell splits back into the same words.
func Join(words ...string) string {
	return shellquote.Join(words...)
}

// Split breaks a command line into words the way a shell would. It is the
// inverse of Join.
func Split(line string) ([]string, error) {
	return shellquote.Split(line)
}

// String renders cmd as a command line for logs and error messages.
func (c Command) String() string {
	return Join(append([]string{c.Name}, c.Args...)...)
}
