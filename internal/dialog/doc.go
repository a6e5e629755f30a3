// Package dialog delegates file and folder selection to the host's native
// dialogs.
//
// A Host opens the modal and reports the outcome through a callback on its own
// scheduling context. Selector turns that callback into a blocking call with a
// one-shot completion: the first delivery wins and later ones are dropped.
// Cancellation is reported as ok == false; an error is returned only when the
// caller's context ends before the host answers.
package dialog
