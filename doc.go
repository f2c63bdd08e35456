// Package tradebook provides the accounting core for a personal securities
// trade tracker. It turns an unordered log of buy/sell records, spread across
// named accounts, into cost basis, realized and unrealized profit/loss, and
// return-on-investment figures.
//
// The core functionalities include:
//   - Ledger Replay: a pure, stateless engine that replays the trade log in
//     chronological order and produces per-trade figures and per-position
//     state (quantity, average cost, cumulative realized P&L).
//   - Close Prices: a caller-owned table of historical closing prices,
//     consulted by the engine to value open positions on a given date.
//   - Monthly Summary: a time series of invested capital, P&L and ROI
//     (simple and cumulative) per account class, built from point-in-time
//     replays at each month end.
//   - Name Resolution: normalization and fuzzy matching of free-text company
//     names, so loosely typed bulk input lands on known positions.
//   - Data Persistence: encoding and decoding of the trade log and close
//     table to and from human-readable, version-controllable formats.
//
// This package serves as the foundational logic for the `tb` command-line
// tool. The engine never mutates its inputs and never fails on malformed
// data: unknown numeric values degrade to null figures instead of errors.
package tradebook
