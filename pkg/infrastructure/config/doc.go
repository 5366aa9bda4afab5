// Package config loads the advisor's configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// SCHC_* environment variables. The merged result is validated before use.
//
// Example config.yaml:
//
//	data_dir: ./data
//	log_level: info
//	server:
//	  address: ":8080"
//	  watch: true
//	predictors:
//	  timeout: 2s
//	  endpoints:
//	    demand: http://models:9000/demand
//	thresholds:
//	  on_time_cutoff: 0.75
package config
