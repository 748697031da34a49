package shopify

const (
	ordersPageSize = 250
	// raw platform search string, unrelated to the derived delivery status
	pendingOrdersFilter = "fulfillment_status:fulfilled"
)

const pendingOrdersQuery = `
query PendingOrders($first: Int!, $after: String, $query: String) {
  orders(first: $first, after: $after, query: $query, sortKey: UPDATED_AT, reverse: true) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        name
        displayFulfillmentStatus
        displayFinancialStatus
        totalPriceSet { shopMoney { amount currencyCode } }
        createdAt
        updatedAt
        lineItems(first: 50) {
          edges {
            node {
              name
              quantity
            }
          }
        }
        fulfillments(first: 10) {
          id
          status
          displayStatus
          events(first: 10) {
            edges {
              node {
                status
                happenedAt
              }
            }
          }
        }
      }
    }
  }
}`

const deliveryStateQuery = `
query DeliveryState($id: ID!) {
  order(id: $id) {
    displayFinancialStatus
    fulfillments(first: 10) {
      id
      status
      displayStatus
    }
    fulfillmentOrders(first: 5) {
      edges {
        node {
          id
          status
          lineItems(first: 50) {
            edges {
              node {
                id
                remainingQuantity
              }
            }
          }
        }
      }
    }
  }
}`

const orderMarkAsPaidMutation = `
mutation orderMarkAsPaid($input: OrderMarkAsPaidInput!) {
  orderMarkAsPaid(input: $input) {
    order {
      id
      displayFinancialStatus
    }
    userErrors {
      field
      message
    }
  }
}`

const fulfillmentCreateMutation = `
mutation fulfillmentCreate($fulfillment: FulfillmentInput!) {
  fulfillmentCreate(fulfillment: $fulfillment) {
    fulfillment {
      id
    }
    userErrors { field message }
  }
}`

const fulfillmentEventCreateMutation = `
mutation fulfillmentEventCreate($fulfillmentEvent: FulfillmentEventInput!) {
  fulfillmentEventCreate(fulfillmentEvent: $fulfillmentEvent) {
    fulfillmentEvent {
      id
      status
    }
    userErrors { field message }
  }
}`
