// Package order models retail orders as this core sees them. Orders are owned
// by an external order-management workflow: they are created on checkout,
// geocoded asynchronously, and moved through their status lifecycle elsewhere.
// The dispatch core reads them to plan routes and performs exactly two status
// mutations: marking an order out-for-delivery when a route materializes, and
// reverting it to ready-for-delivery when its route is cancelled before the
// stop resolved.
package order
