// Package errors provides structured errors for navkit.
//
// Every user-facing failure carries a stable code (N001, N020, ...), a
// category describing which phase produced it (config, bootstrap,
// navigation, module, cli), and optional suggestions rendered by Format
// for terminal display.
//
// Composition errors (category config) are fatal and raised synchronously
// during module assembly. Bootstrap errors propagate unrecovered to the
// host's startup sequence. Navigation errors are delegated to the router's
// own error handler and never intercepted by the startup coordinator.
package errors
