package git

import "strings"

// Long options of git commit that supply the message themselves or, like
// --no-edit, keep the one already there.
var messageLongFlags = []string{
	"--message", "--file", "--reuse-message", "--reedit-message", "--fixup", "--squash", "--no-edit",
}

// Short options of git commit that supply the message themselves.
const messageShortFlags = "mFCc"

// Short options that take an attached optional value: anything after them in
// a cluster belongs to the value, not to further flags.
const valueShortFlags = "Su"

// HasMessageFlag reports whether args (the flags forwarded to git commit)
// already provide a commit message. Arguments after "--" are pathspecs.
func HasMessageFlag(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case strings.HasPrefix(arg, "--"):
			if matchesLong(arg, messageLongFlags) {
				return true
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			if clusterHasMessage(arg[1:]) {
				return true
			}
		}
	}
	return false
}

// HasFlag reports whether any of the given long or short options appear in
// args before "--". Short names are matched inside clusters such as -av.
func HasFlag(args []string, long []string, short string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case strings.HasPrefix(arg, "--"):
			if matchesLong(arg, long) {
				return true
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1 && short != "":
			for _, r := range arg[1:] {
				if strings.ContainsRune(short, r) {
					return true
				}
				if strings.ContainsRune(messageShortFlags+valueShortFlags, r) {
					break
				}
			}
		}
	}
	return false
}

// matchesLong matches "--name" and "--name=value". Git also accepts unique
// prefixes of long options; only full names are recognised here.
func matchesLong(arg string, names []string) bool {
	name, _, _ := strings.Cut(arg, "=")
	for _, candidate := range names {
		if name == candidate {
			return true
		}
	}
	return false
}

func clusterHasMessage(cluster string) bool {
	for _, r := range cluster {
		if strings.ContainsRune(messageShortFlags, r) {
			return true
		}
		if strings.ContainsRune(valueShortFlags, r) {
			return false
		}
	}
	return false
}
