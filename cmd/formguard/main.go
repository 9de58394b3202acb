// Formguard validates form documents against declarative field rules.
//
// Usage:
//
//	# Validate a form described in YAML, stopping at the first failure
//	formguard validate --form signup.yaml
//
//	# Collect every failure with German messages
//	formguard validate --form signup.yaml --locales ./locales --locale de --all
//
//	# Print Prometheus metrics for the run to stderr
//	formguard validate --form signup.yaml --metrics
//
//	# List the built-in rules and their attributes
//	formguard rules
//
// Engine settings are read from FORMGUARD_* environment variables and an
// optional .env file.
package main

func main() {
	Execute()
}
