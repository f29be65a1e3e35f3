// Package config loads the optional pass configuration file.
//
// The file is TOML. Every key is optional; missing keys keep the defaults of
// the ballerinax/awslambda runtime.
//
//	[runtime]
//	org            = "ballerinax"
//	module         = "awslambda"
//	annotation     = "Function"
//	context_type   = "Context"
//	register_op    = "register"
//	process_op     = "process"
//	entry_point_id = "d47ff0e4-cb4f-40a7-acde-5daf8f50043c"
//
//	[trace]
//	extension = ".txt"
//
//	[packages]
//	paths = ["./manifests"]
package config
