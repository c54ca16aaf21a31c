// Package preset loads effect chains from YAML files.
//
// A preset looks like:
//
//	log_level: info
//	block_size: 4096
//	effects:
//	  - type: highpass
//	    params:
//	      cutoffHz: 200
//	  - type: echo
//	    bypass: true
//	    params:
//	      delayMs: 300
//	      mixPercent: 40
//	  - type: normalize
//	    params:
//	      mode: peak
//	      targetDb: -1
package preset
