package domain

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCBE      PaymentMethod = "cbe"
	PaymentMethodTelebirr PaymentMethod = "telebirr"
	PaymentMethodMpesa    PaymentMethod = "mpesa"
	PaymentMethodAbisnya  PaymentMethod = "abisnya"
	PaymentMethodEnat     PaymentMethod = "enat"
	PaymentMethodDashen   PaymentMethod = "dashen"
	PaymentMethodOther    PaymentMethod = "other"
)

// MethodInfo is reference data shown to the buyer: where to send the money
// and how. No external verification happens against it.
type MethodInfo struct {
	Name         string `json:"name"`
	Account      string `json:"account"`
	Instructions string `json:"instructions,omitempty"`
}

// paymentMethods is loaded once and never mutated. Unlaunched methods carry
// placeholder account strings the clients render as-is.
var paymentMethods = map[PaymentMethod]MethodInfo{
	PaymentMethodCash: {
		Name: "Cash on Delivery",
	},
	PaymentMethodCBE: {
		Name:         "Commercial Bank of Ethiopia",
		Account:      "1000668411901",
		Instructions: "Send payment to CBE account 1000668411901",
	},
	PaymentMethodTelebirr: {
		Name:         "Telebirr",
		Account:      "0969377085",
		Instructions: "Send payment to Telebirr 0969377085",
	},
	PaymentMethodMpesa: {
		Name:         "M-Pesa Safari",
		Account:      "0706377085",
		Instructions: "Send payment to M-Pesa 0706377085",
	},
	PaymentMethodAbisnya: {
		Name:         "Abisnya",
		Account:      "Coming Soon",
		Instructions: "Coming Soon",
	},
	PaymentMethodEnat: {
		Name:         "Enat Bank",
		Account:      "Coming Soon",
		Instructions: "Coming Soon",
	},
	PaymentMethodDashen: {
		Name:         "Dashen Bank",
		Account:      "Coming Soon",
		Instructions: "Coming Soon",
	},
	PaymentMethodOther: {
		Name:         "Other",
		Account:      "Contact for details",
		Instructions: "Contact us for payment details",
	},
}

// MethodInfoFor looks up the reference data for a payment method.
func MethodInfoFor(m PaymentMethod) (MethodInfo, bool) {
	info, ok := paymentMethods[m]
	return info, ok
}

// AllPaymentMethods returns a copy of the method table so callers cannot
// mutate the shared configuration.
func AllPaymentMethods() map[PaymentMethod]MethodInfo {
	out := make(map[PaymentMethod]MethodInfo, len(paymentMethods))
	for k, v := range paymentMethods {
		out[k] = v
	}
	return out
}
