// SPDX-License-Identifier: EPL-2.0

package feature

import "errors"

var (
	ErrInputTooShort   = errors.New("input too short for reflect padding")
	ErrRaggedBatch     = errors.New("batch items differ in length")
	ErrLengthMismatch  = errors.New("lengths do not match batch")
	ErrFilterbankShape = errors.New("filterbank shape does not match config")
	ErrInvalidConfig   = errors.New("invalid feature config")
	ErrEmptyBatch      = errors.New("empty batch")
	ErrBadAsset        = errors.New("malformed filterbank asset")
)
