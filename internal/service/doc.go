// Package service holds the TiffinCRM use cases. Each service validates
// typed input from pkg/types, enforces the business rules, and runs any
// multi-step write inside one Store transaction.
package service
