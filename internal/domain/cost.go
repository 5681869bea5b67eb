package domain

// CostOfLivingRecord - индексы стоимости жизни. City пустой для записей уровня страны.
// Отсутствующие значения - nil, а не ноль.
type CostOfLivingRecord struct {
	City            string
	Country         string
	CostOfLiving    *float64
	Rent            *float64
	RestaurantPrice *float64
}

type CostIndices struct {
	CostOfLiving    *float64
	Rent            *float64
	RestaurantPrice *float64
}

func (r *CostOfLivingRecord) Indices() CostIndices {
	return CostIndices{
		CostOfLiving:    r.CostOfLiving,
		Rent:            r.Rent,
		RestaurantPrice: r.RestaurantPrice,
	}
}
