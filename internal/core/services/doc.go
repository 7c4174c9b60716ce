// Package services implements the driving ports on top of the driven
// ports. Services hold the application's business rules: input
// validation before remote calls, the capture state machine, and the
// unified feed computation.
package services
