/*
Package config reads the settings an Interceptor and the application around it run with.

Settings come from a YAML file, through [Load], or from environment variables, through [FromEnv].
Either way, fields left unset take the values of [Default].

A YAML file looks like:

	addr: ":3000"
	env: DEVELOPMENT
	exception_kinds:
	  - req.ValidationErrors
	  - problem.Problem
	http_status: 406
	log_level: INFO
	template_engine: ""
	template_names:
	  - "safespace/{exc_type}.html"
	  - "safespace/problem.html"

Values of the form $VAR or ${VAR} are expanded from the environment before parsing.
*/
package config
