// Package options turns a schema fragment and its UI overlay into the ordered
// list of choices a select, radio group or checkbox group renders.
//
// Two schema shapes produce options. An enum yields one option per value,
// labelled from the overlay's name table and optionally reordered by its order
// directive. A oneOf/anyOf list yields one option per branch; the value comes
// from the branch's selector property (the discriminator, or the overlay's
// selector override) or from the branch's constant, and the label from the
// first available of: overlay branch title, selector property title, branch
// title, value.
//
// Resolution is a pure function of its inputs. Nothing is cached and inputs
// are never modified, so Resolve is safe to call concurrently.
package options
