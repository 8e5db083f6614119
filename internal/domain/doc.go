// Package domain defines the core business entities of the bookstore
// and their validation rules. Entities here are plain data records;
// persistence concerns live in the store interfaces and their adapters.
package domain
