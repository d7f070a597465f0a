// internal/model/subscriber.go
package model

type Subscriber struct {
    ID       int      `db:"id" json:"id"`
    Email    string   `db:"email" json:"email"`
    IsActive bool     `db:"is_active" json:"is_active"`
    Tags     []string `db:"tags" json:"tags"`
}
