package domain

import "time"

// Order — строка заказа: один товар, купленный пользователем.
// Записи только создаются; обновлений и удалений в этом сервисе нет.
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	OrderDate time.Time `json:"order_date"`
}

// OrderItem — позиция запроса на оформление заказа.
type OrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderHistory — строка истории заказов: join заказа, пользователя и товара.
type OrderHistory struct {
	UserID      int64     `json:"user_id"`
	OrderID     int64     `json:"order_id"`
	OrderDate   time.Time `json:"order_date"`
	Username    string    `json:"username"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
}
