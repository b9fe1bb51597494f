// Package models defines the core domain models for RoomMate.
//
// # Models
//
//   - User: Registered account; the identity behind payers and participants
//   - Household: Group of users sharing expenses
//   - Member: A user's membership in a household
//   - Expense: Money one member fronted for the household
//   - ExpenseSplit: One participant's share of an expense
//
// Balances are derived on demand and never persisted; see package calculator.
//
// # Conventions
//
//  1. Relationships are ID strings, never pointers
//  2. Money is decimal.Decimal here and integer cents in storage
//  3. Timestamps are Unix seconds assigned by the store
package models
