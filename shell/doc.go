// Package shell builds the application's route tree: the login and
// pending-approval screens behind the pre-auth guard and the dashboard area
// behind the protected guard. Handlers render placeholder pages; the point of
// the shell is that navigation always lands where the guards decide.
package shell
