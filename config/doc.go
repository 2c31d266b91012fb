// Package config loads pathviz settings from YAML.
//
// A file looks like:
//
//	grid:
//	  size: 20
//	  topology: 8-directional
//	  layout: []        # optional rows of . # S T, overrides size
//	  start: 0
//	  target: -1        # -1 = bottom-right corner
//	run:
//	  step_delay: 50ms
//	  max_steps: 0
//	log:
//	  level: info
//	  format: text      # or json
//	metrics:
//	  enabled: false
//	  addr: ":9090"
//
// Every field has a default (see Default), so a file only needs the keys it
// changes. Unknown keys are rejected. After the file, PATHVIZ_* environment
// variables override single fields; see ApplyEnv.
package config
