package seed

import "github.com/louisbranch/invoicing/internal/services/invoices/invoice"

var demoCustomers = []invoice.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com"},
}

var demoInvoices = []invoice.Invoice{
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e01", CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", AmountCents: 15795, Status: invoice.StatusPending, Date: "2022-12-06"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e02", CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", AmountCents: 20348, Status: invoice.StatusPending, Date: "2022-11-14"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e03", CustomerID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", AmountCents: 3040, Status: invoice.StatusPaid, Date: "2022-10-29"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e04", CustomerID: "76d65c26-f784-44a2-ac19-586678f7c2f2", AmountCents: 44800, Status: invoice.StatusPaid, Date: "2023-09-10"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e05", CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", AmountCents: 34577, Status: invoice.StatusPending, Date: "2023-08-05"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e06", CustomerID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", AmountCents: 54246, Status: invoice.StatusPending, Date: "2023-07-16"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e07", CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", AmountCents: 666, Status: invoice.StatusPending, Date: "2023-06-27"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e08", CustomerID: "76d65c26-f784-44a2-ac19-586678f7c2f2", AmountCents: 32545, Status: invoice.StatusPaid, Date: "2023-06-09"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e09", CustomerID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", AmountCents: 1250, Status: invoice.StatusPaid, Date: "2023-06-17"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e10", CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", AmountCents: 8546, Status: invoice.StatusPaid, Date: "2023-06-07"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e11", CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", AmountCents: 500, Status: invoice.StatusPaid, Date: "2023-08-19"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e12", CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", AmountCents: 8945, Status: invoice.StatusPaid, Date: "2023-06-03"},
	{ID: "0b7e8d1a-6a4f-4a59-9b0c-5f1d2b7c8e13", CustomerID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", AmountCents: 1000, Status: invoice.StatusPaid, Date: "2022-06-05"},
}

var demoRevenue = []invoice.Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}
