// Package config loads the optional project configuration of the fieldmap
// command.
//
// The file is looked up by walking from the package directory towards the
// filesystem root and may be YAML or TOML:
//
//	runtime: fieldmap        # import path of the runtime package
//	output: ""               # generated file name
//	derive: [Field, Fields]  # for --type selected types without a derive directive
//	header: ""               # extra line in the generated header
//	cache:
//	  enabled: true
//	  dir: ""                # default $XDG_CACHE_HOME/fieldmap
//
// Command line flags override values read from the file.
package config
