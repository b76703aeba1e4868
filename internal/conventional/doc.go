// Package conventional models a Conventional Commits message and converts
// between the collected fields and the text git records.
//
// A Message is rendered by a Formatter as
//
//	<type>[(<scope>)][!]: [<emoji> ]<subject>
//
//	<body>
//
//	BREAKING CHANGE: <note>
//	Refs: <issues>
//
// where every optional part is omitted when empty. Parse goes the other way
// and is used by the commit-msg hook, the MCP lint tool and the history
// scanner. Validator checks a Message against the configured type set.
package conventional
