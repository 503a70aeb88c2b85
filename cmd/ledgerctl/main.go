// Command ledgerctl is the operator CLI for the budget ledger.
package main

func main() {
	Execute()
}
