package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderEmailData is the payload rendered into the confirmation email. The
// field names match the order.created event payload.
type OrderEmailData struct {
	OrderNumber     string            `json:"orderNumber"`
	Email           string            `json:"email"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Products        []OrderEmailLine  `json:"products"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	PromoDiscount   decimal.Decimal   `json:"promoDiscount"`
	ShippingFee     decimal.Decimal   `json:"shippingFee"`
	Tax             decimal.Decimal   `json:"tax"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	ShippingMethod  string            `json:"shippingMethod"`
	ShippingAddress OrderEmailAddress `json:"shippingAddress"`
	OrderDate       string            `json:"orderDate"`
}

// OrderEmailLine is one purchased item in the confirmation email.
type OrderEmailLine struct {
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderEmailAddress is the delivery address block.
type OrderEmailAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// ConfirmationSubject builds the subject line for an order confirmation.
func ConfirmationSubject(orderNumber string) string {
	return "Order Confirmation - " + orderNumber
}

var confirmationTmpl = template.Must(template.New("order_confirmation").Funcs(template.FuncMap{
	"money": func(v decimal.Decimal) string { return "$" + v.StringFixed(2) },
	"lineTotal": func(l OrderEmailLine) string {
		return "$" + l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).StringFixed(2)
	},
	"upper": strings.ToUpper,
	"size": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
	"shippingLabel": func(fee decimal.Decimal) string {
		if fee.IsZero() {
			return "FREE"
		}
		return "$" + fee.StringFixed(2)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; background-color: #000000; color: #ffffff;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #000000; padding: 40px 20px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color: #0a0a0a; border: 1px solid rgba(255,255,255,0.1); border-radius: 24px; overflow: hidden;">
          <tr>
            <td style="padding: 40px; text-align: center; border-bottom: 1px solid rgba(255,255,255,0.1);">
              <h1 style="margin: 0; font-size: 32px; font-weight: 900; letter-spacing: -0.05em; color: #ffffff;">
                XO CLUB<span style="color: #3b82f6;">.</span>
              </h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 40px 30px; text-align: center;">
              <h2 style="margin: 0; font-size: 28px; font-weight: 900; letter-spacing: -0.05em; color: #ffffff; text-transform: uppercase;">
                ORDER CONFIRMED
              </h2>
              <p style="margin: 10px 0 0; font-size: 12px; font-weight: 700; letter-spacing: 0.3em; color: #3b82f6; text-transform: uppercase;">
                ORDER #{{.OrderNumber}}
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 40px 30px;">
              <p style="margin: 0; font-size: 16px; line-height: 1.6; color: #ffffff;">
                Hi {{.FirstName}},
              </p>
              <p style="margin: 20px 0 0; font-size: 16px; line-height: 1.6; color: #cccccc;">
                Thank you for your order! We're preparing your elite pieces for dispatch.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 40px 30px;">
              <table width="100%" cellpadding="0" cellspacing="0">
                <tr>
                  <td style="padding: 20px; background-color: rgba(255,255,255,0.05); border-radius: 12px;">
                    <h3 style="margin: 0 0 15px; font-size: 12px; font-weight: 900; letter-spacing: 0.2em; color: #3b82f6; text-transform: uppercase;">
                      ORDER DETAILS
                    </h3>
                    {{range .Products}}
                    <div style="margin-bottom: 15px; padding-bottom: 15px; border-bottom: 1px solid rgba(255,255,255,0.1);">
                      <div style="margin-bottom: 5px;">
                        <span style="font-size: 14px; font-weight: 700; color: #ffffff; text-transform: uppercase;">{{.Name}}</span>
                        <span style="font-size: 14px; font-weight: 700; color: #ffffff; float: right;">{{lineTotal .}}</span>
                      </div>
                      <div style="font-size: 11px; color: #888888; text-transform: uppercase; letter-spacing: 0.1em;">
                        Size: {{size .Size}} &times; {{.Quantity}}
                      </div>
                    </div>
                    {{end}}
                    <div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid rgba(255,255,255,0.2);">
                      <div style="margin-bottom: 10px; font-size: 12px; color: #888888;">
                        <span>SUBTOTAL</span>
                        <span style="float: right;">{{money .Subtotal}}</span>
                      </div>
                      {{if .PromoDiscount.IsPositive}}
                      <div style="margin-bottom: 10px; font-size: 12px; color: #888888;">
                        <span>DISCOUNT</span>
                        <span style="float: right; color: #ef4444;">-{{money .PromoDiscount}}</span>
                      </div>
                      {{end}}
                      <div style="margin-bottom: 10px; font-size: 12px; color: #888888;">
                        <span>SHIPPING ({{upper .ShippingMethod}})</span>
                        <span style="float: right;">{{shippingLabel .ShippingFee}}</span>
                      </div>
                      <div style="margin-bottom: 10px; font-size: 12px; color: #888888;">
                        <span>TAX</span>
                        <span style="float: right;">{{money .Tax}}</span>
                      </div>
                      <div style="margin-top: 15px; padding-top: 15px; border-top: 1px solid rgba(255,255,255,0.2);">
                        <span style="font-size: 16px; font-weight: 900; color: #ffffff; text-transform: uppercase;">TOTAL</span>
                        <span style="font-size: 20px; font-weight: 900; color: #ffffff; float: right;">{{money .TotalAmount}}</span>
                      </div>
                    </div>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 40px 30px;">
              <h3 style="margin: 0 0 10px; font-size: 12px; font-weight: 900; letter-spacing: 0.2em; color: #3b82f6; text-transform: uppercase;">
                SHIPPING ADDRESS
              </h3>
              <p style="margin: 0; font-size: 14px; line-height: 1.8; color: #cccccc;">
                {{.FirstName}} {{.LastName}}<br>
                {{.ShippingAddress.Street}}<br>
                {{.ShippingAddress.City}}{{if .ShippingAddress.State}}, {{.ShippingAddress.State}}{{end}} {{.ShippingAddress.Zip}}
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 40px 30px;">
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #cccccc;">
                We'll send you a tracking number as soon as your order ships. Expected delivery: 3-5 business days (Express) or 5-7 business days (Standard).
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px 40px; border-top: 1px solid rgba(255,255,255,0.1); text-align: center;">
              <p style="margin: 0 0 10px; font-size: 11px; color: #888888; text-transform: uppercase; letter-spacing: 0.1em;">
                Questions? Contact us at <a href="mailto:support@xoclub.com" style="color: #3b82f6; text-decoration: none;">support@xoclub.com</a>
              </p>
              <p style="margin: 0; font-size: 10px; color: #666666;">
                &copy; 2025 XO CLUB LTD. ALL RIGHTS RESERVED.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

// RenderConfirmation produces the confirmation email HTML for an order.
func RenderConfirmation(data OrderEmailData) (string, error) {
	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render order confirmation: %w", err)
	}
	return sb.String(), nil
}
