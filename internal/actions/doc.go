// Package actions classifies transcript fragments into cooking-action labels
// and handles the time references embedded in them.
//
// Classification is a deterministic first-match scan over an ordered keyword
// table; nothing here calls out to a model or service. Confidence grows with
// the length of the matched keyword, so a specific term like 薄切り scores
// higher than a bare verb stem, and unrecognized text falls back to a
// low-confidence その他 label instead of an error.
package actions
