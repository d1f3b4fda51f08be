// Package fastembed embeds text locally with ONNX BGE and MiniLM models
// through fastembed-go. It needs cgo and the ONNX runtime shared library;
// builds without cgo compile a stub that returns ai.ErrFastEmbedUnavailable.
package fastembed
