// Package order provides the Order aggregate and its status lifecycle.
//
// The package includes:
//   - Order: customer, line items, delivery address, contact email, payment
//     method, cached total and the lifecycle fields (status, driver, ETA)
//   - Status: the linear lifecycle Placed -> Accepted -> InDelivery -> Delivered
//   - LineItem: name, unit price and quantity, used to compute the total
//   - IDGenerator / Sequence: monotonic identifiers assigned on admission
//
// Key business rules:
//   - An order is built freely and validated on admission; Validate reports
//     every violated rule at once
//   - The total is recomputed whenever items change, and items are frozen once
//     the order has been admitted
//   - Status changes move exactly one step forward; Delivered is terminal
package order
