// Package config loads hsl-camera settings and holds the live HSL range.
//
// Settings come from an optional YAML file layered over Default(); the
// HSL_CAMERA_LOG_LEVEL environment variable overrides log_level. A minimal
// file:
//
//	log_level: debug
//	server:
//	  addr: ":8443"
//	  cert_file: certificates/server.cert
//	  key_file: certificates/server.key
//	pipeline:
//	  kernel_size: 4
//	  threshold: 0.3
//	  highlight: "#00FFFF"
//	range:
//	  min_hue: 200
//	  max_hue: 220
//	  min_sat: 0.3
//	  max_sat: 1.0
//	  min_lum: 0
//	  max_lum: 1.0
//
// RangeStore is the mutable side: the UI writes to it and every pipeline run
// reads a Snapshot.
package config
