// Package carteira computes a stock wallet from a chronological stream of B3
// buy/sell trade events.
//
// The core is deliberately small: FromEvents groups events by instrument code
// into a Wallet, and the Ticker view derives the weighted average acquisition
// price and the net position from one instrument's event sequence. Everything
// around it, importing broker CSVs, persisting the ledger as JSONL, syncing
// trades to investidor10, rendering reports, is glue living in the importer,
// the investidor10 package and the cmd package.
package carteira
