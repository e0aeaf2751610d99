// Package config loads the run description shared by the propsolve CLI
// and its HTTP server.
//
// A run file is YAML (gopkg.in/yaml.v3). Unknown keys are rejected. An
// optional .env file (github.com/joho/godotenv) may then override the
// storage settings through PROPEL_* variables, so one run file can move
// between a laptop and a deployment unchanged.
//
//	name: cruise
//	source: {driver: fs, root: ./polars}
//	atmosphere: {altitude: 500, velocity: 20}
//	propellers:
//	  - name: left
//	    radius: 0.6
//	    mode: both
//	    rpm: 60
//	    pitch: 5
//	    sections_file: blade.json
//	sweep:
//	  - {conditions: {velocity: 20}, thrust_x: 120}
//	results: {driver: sqlite, dsn: runs.db}
//
// Relative file paths are resolved against the directory of the run file.
package config
