package domain

import "errors"

// ErrOrderNotFound заказ не существует в магазине
var ErrOrderNotFound = errors.New("order not found")
