package model

const CounterAuctionNumber = "auction_number"

type Counter struct {
	Name  string `gorm:"column:name;primaryKey;size:64"`
	Value uint64 `gorm:"column:value;not null"`
}

func (Counter) TableName() string {
	return "counters"
}
