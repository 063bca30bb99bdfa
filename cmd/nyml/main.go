// Command nyml parses, formats, converts and watches NYML documents.
//
// Usage:
//
//	# Print the mapping of a V1 document as JSON
//	nyml parse config.nyml
//
//	# Keep duplicate keys as an ordered entries document
//	nyml parse --entries config.nyml
//
//	# Collect duplicate keys into lists
//	nyml parse --strategy all config.nyml
//
//	# Normalise a V2 document
//	nyml fmt notes.nyml
//
//	# Turn JSON or YAML into NYML
//	nyml convert settings.json
//
//	# Re-validate a file every time it changes
//	nyml watch config.nyml
package main

func main() {
	Execute()
}
